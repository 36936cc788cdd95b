package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// The speech endpoint delivers 16-bit PCM, mono, at a fixed 24kHz.
const (
	SampleRate = 24000

	ttsModel    = "gemini-2.5-flash-preview-tts"
	ttsEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
)

var speechHTTP = &http.Client{Timeout: 60 * time.Second}

// synthesize turns reply text into raw PCM bytes. The generative-ai-go SDK
// does not expose audio response modalities, so this calls the REST API
// directly with the same key.
func (o *GeminiOracle) synthesize(ctx context.Context, text string) ([]byte, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": text}}},
		},
		"generationConfig": map[string]any{
			"responseModalities": []string{"AUDIO"},
			"speechConfig": map[string]any{
				"voiceConfig": map[string]any{
					"prebuiltVoiceConfig": map[string]any{"voiceName": "Kore"},
				},
			},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(ttsEndpoint, ttsModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := speechHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("speech request returned %d: %s", resp.StatusCode, msg)
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					InlineData struct {
						Data string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode speech response: %w", err)
	}
	for _, c := range parsed.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData.Data == "" {
				continue
			}
			pcm, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode audio payload: %w", err)
			}
			return pcm, nil
		}
	}
	return nil, fmt.Errorf("speech response carried no audio")
}

// DecodePCM16 converts raw little-endian 16-bit PCM bytes into float
// samples in [-1, 1) by dividing each sample by 32768.
func DecodePCM16(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("pcm data has odd length %d", len(data))
	}
	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = float32(s) / 32768
	}
	return samples, nil
}
