package models

// UserQuery is the structured form of a shopping request. It is built once
// by the interpreter and read-only for the rest of the pipeline.
type UserQuery struct {
	Raw        string   `json:"raw"`
	Budget     *Money   `json:"budget,omitempty"`
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have"`
	Category   string   `json:"category,omitempty"`
}
