package dto

// SynthesizeRequest asks for TTS audio for a piece of tutorial text.
// VoiceID is optional; when empty the caller's stored voice (or the service
// default) is used.
type SynthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id,omitempty"`
}

// SynthesizeResponse carries the synthesized audio inline.
type SynthesizeResponse struct {
	Audio       string `json:"audio"`
	ContentType string `json:"content_type"`
}

// VoiceCloneResponse returns the created voice.
type VoiceCloneResponse struct {
	VoiceData VoiceData `json:"voice_data"`
}

type VoiceData struct {
	VoiceID string `json:"voice_id"`
}
