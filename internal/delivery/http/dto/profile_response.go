package dto

type BioResponse struct {
	HTML string `json:"html"`
}
