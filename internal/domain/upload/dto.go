package upload

// SubmitResponse is the backend-mode payload for a successful upload.
type SubmitResponse struct {
	Filename string `json:"filename"`
	ImgURL   string `json:"img_url"`
}

// ImageEntry is one element of the backend-mode /images listing.
type ImageEntry struct {
	ImageURL string `json:"image_url"`
}
