package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}

type UserMutationResponse struct {
	Message string `json:"message"`
	User    *User  `json:"utilisateur,omitempty"`
}

type VehicleMutationResponse struct {
	Message string   `json:"message"`
	Vehicle *Vehicle `json:"vehicule,omitempty"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}
