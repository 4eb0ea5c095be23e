package response

type LoginResponse struct {
	OK   bool   `json:"ok"`
	Role string `json:"role"`
}

type MeResponse struct {
	Role string `json:"role"`
}
