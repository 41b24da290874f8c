package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// Polly defaults
const (
	DefaultVoice  = "Joanna"
	DefaultEngine = "neural"
	// SpeechMaxChars is polly limit for plain text input
	SpeechMaxChars = 3000
)

// ErrNoAudio returned when speech service sent empty stream
var ErrNoAudio = errors.New("no audio returned")

// Synthesizer turns text into mp3 audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Voice() string
}

// Voice of speech service
type Voice struct {
	ID       string
	Name     string
	Language string
	Gender   string
}

// PollySynthesizer narrates text with Amazon Polly
type PollySynthesizer struct {
	Client    *polly.Client
	VoiceID   string
	EngineKey string
}

// Voice used for synthesis
func (p *PollySynthesizer) Voice() string {
	if p.VoiceID == "" {
		return DefaultVoice
	}
	return p.VoiceID
}

// Synthesize mp3 speech for text, cut to polly limit
func (p *PollySynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	engine := p.EngineKey
	if engine == "" {
		engine = DefaultEngine
	}

	resp, err := p.Client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(truncateText(text, SpeechMaxChars)),
		VoiceId:      types.VoiceId(p.Voice()),
		Engine:       types.Engine(engine),
		OutputFormat: types.OutputFormatMp3,
		TextType:     types.TextTypeText,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	if resp.AudioStream == nil {
		return nil, ErrNoAudio
	}
	defer resp.AudioStream.Close() // nolint

	data, err := io.ReadAll(resp.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoAudio
	}
	return data, nil
}

// Voices available for language, all voices for empty language
func (p *PollySynthesizer) Voices(ctx context.Context, language string) ([]Voice, error) {
	input := &polly.DescribeVoicesInput{}
	if language != "" {
		input.LanguageCode = types.LanguageCode(language)
	}
	resp, err := p.Client.DescribeVoices(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("describe voices: %w", err)
	}

	res := make([]Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		res = append(res, Voice{ID: string(v.Id), Name: aws.ToString(v.Name),
			Language: string(v.LanguageCode), Gender: string(v.Gender)})
	}
	return res, nil
}

// truncateText cuts text to maxChars runes, on the last space if there is one
func truncateText(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxChars])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
