package model

import "time"

// PublicProfile is what a scanned QR code shows. It carries no contact data.
type PublicProfile struct {
	Username  string    `json:"username"`
	LastName  string    `json:"nom"`
	FirstName string    `json:"prenom"`
	Vehicles  []Vehicle `json:"vehicules"`
}

type QRCodeResponse struct {
	UserID          int64  `json:"userId"`
	PublicViewToken string `json:"publicViewToken"`
	ProfileURL      string `json:"profileUrl"`
}

type Visit struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"UtilisateurID"`
	IPAddress string    `json:"IPAddress"`
	VisitedAt time.Time `json:"VisitDate"`
}
