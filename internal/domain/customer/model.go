package customer

// Customer is a payor directory entry, upserted on every invoice save
// so the directory reflects the latest name/email used for that payor
// identity.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
