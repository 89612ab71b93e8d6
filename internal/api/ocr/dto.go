package ocr

// OcrSimResult is the body of a successful SIM recognition.
type OcrSimResult struct {
	SimNumber string `json:"sim_number"`
}
