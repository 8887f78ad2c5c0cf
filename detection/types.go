package detection

import "github.com/kbukum/voicecheck/classifier"

// SupportedLanguages lists accepted languages in display order.
var SupportedLanguages = []string{"Tamil", "English", "Hindi", "Malayalam", "Telugu"}

// AudioFormatMP3 is the only accepted audioFormat.
const AudioFormatMP3 = "mp3"

// StatusSuccess is the status of every Result.
const StatusSuccess = "success"

// Request is the body of POST /api/voice-detection.
type Request struct {
	Language    string `json:"language" validate:"required,oneof=Tamil English Hindi Malayalam Telugu" example:"Tamil" doc:"Language spoken in the clip"`
	AudioFormat string `json:"audioFormat" validate:"required,eq=mp3" example:"mp3" doc:"Audio container, only mp3"`
	AudioBase64 string `json:"audioBase64" validate:"required" doc:"Standard base64 of the MP3 file"`
}

// Result is the success envelope.
type Result struct {
	Status          string           `json:"status" example:"success"`
	Language        string           `json:"language" example:"Tamil"`
	Classification  classifier.Label `json:"classification" enum:"AI_GENERATED,HUMAN" example:"AI_GENERATED"`
	ConfidenceScore float64          `json:"confidenceScore" minimum:"0" maximum:"1" example:"0.91"`
	Explanation     string           `json:"explanation" example:"Unnatural patterns detected: unusually consistent pitch, limited spectral variation"`
}
