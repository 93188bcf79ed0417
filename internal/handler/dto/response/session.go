package response

type SessionResponse struct {
	CSRFToken string `json:"csrf_token"`
}
