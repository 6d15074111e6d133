package model

type Vehicle struct {
	ID           int64          `json:"id"`
	Brand        string         `json:"marque"`
	Model        string         `json:"modele"`
	Year         int            `json:"annee"`
	Type         string         `json:"type_de_vehicule"`
	Color        string         `json:"couleur"`
	EngineType   string         `json:"type_de_moteur"`
	Power        int            `json:"puissance"`
	Transmission string         `json:"transmission"`
	Modification string         `json:"modification_du_vehicule"`
	OwnerID      int64          `json:"Utilisateur_id"`
	ImageURL     *string        `json:"imageURL"`
	Images       []VehicleImage `json:"images,omitempty"`
}

// VehicleRequest is used for create (all fields required) and update (zero values keep the stored field).
type VehicleRequest struct {
	Brand        string `json:"marque"`
	Model        string `json:"modele"`
	Year         int    `json:"annee"`
	Type         string `json:"type_de_vehicule"`
	Color        string `json:"couleur"`
	EngineType   string `json:"type_de_moteur"`
	Power        int    `json:"puissance"`
	Transmission string `json:"transmission"`
	Modification string `json:"modification_du_vehicule"`
}

type VehicleImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	VehicleID int64  `json:"Vehicule_id"`
}

// VehicleImageRequest carries images already stored by the client-side uploader.
type VehicleImageRequest struct {
	Images []VehicleImageInput `json:"images" binding:"required,min=1,dive"`
}

type VehicleImageInput struct {
	URL      string `json:"url" binding:"required,url"`
	PublicID string `json:"public_id" binding:"required"`
}
