package audio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strconv"
	"strings"
)

// PCMParams describe raw linear PCM audio as delivered by the provider.
type PCMParams struct {
	SampleRate    int
	BitsPerSample int
}

// DefaultPCM matches Gemini TTS output when no MIME parameters are present.
var DefaultPCM = PCMParams{SampleRate: 24000, BitsPerSample: 16}

// ParseMIME extracts PCM parameters from an audio MIME type such as
// "audio/L16;codec=pcm;rate=24000". Unparseable parameters fall back to
// the defaults rather than failing the generation.
func ParseMIME(mimeType string) PCMParams {
	p := DefaultPCM
	for _, part := range strings.Split(mimeType, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(strings.ToLower(part), "rate="):
			if rate, err := strconv.Atoi(part[len("rate="):]); err == nil && rate > 0 {
				p.SampleRate = rate
			}
		case strings.HasPrefix(part, "audio/L"):
			if bits, err := strconv.Atoi(part[len("audio/L"):]); err == nil && bits > 0 {
				p.BitsPerSample = bits
			}
		}
	}
	return p
}

// Duration returns the playback length in seconds of raw mono PCM.
func Duration(pcm []byte, p PCMParams) float64 {
	byteRate := p.SampleRate * p.BitsPerSample / 8
	if byteRate <= 0 {
		return 0
	}
	return float64(len(pcm)) / float64(byteRate)
}

// WAVDuration returns the playback length in seconds of a standard WAV
// payload, reading the byte rate out of the fmt chunk. Returns 0 for
// payloads too short to carry a header.
func WAVDuration(wav []byte) float64 {
	const headerSize = 44
	if len(wav) < headerSize {
		return 0
	}
	byteRate := binary.LittleEndian.Uint32(wav[28:32])
	if byteRate == 0 {
		return 0
	}
	return float64(len(wav)-headerSize) / float64(byteRate)
}

// EncodeWAV wraps raw mono PCM bytes in a WAV container.
func EncodeWAV(pcm []byte, p PCMParams) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWAVTo(&buf, pcm, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteWAVTo writes raw mono PCM bytes to out as a WAV stream.
func WriteWAVTo(out io.Writer, pcm []byte, p PCMParams) error {
	const (
		numChannels = 1
		audioFormat = 1 // PCM
	)
	if p.SampleRate <= 0 {
		p.SampleRate = DefaultPCM.SampleRate
	}
	if p.BitsPerSample <= 0 {
		p.BitsPerSample = DefaultPCM.BitsPerSample
	}

	dataSize := uint32(len(pcm))
	byteRate := uint32(p.SampleRate * numChannels * p.BitsPerSample / 8)
	blockAlign := uint16(numChannels * p.BitsPerSample / 8)

	w := bufio.NewWriter(out)

	// RIFF header.
	if _, err := w.WriteString("RIFF"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36)+dataSize); err != nil {
		return err
	}
	if _, err := w.WriteString("WAVE"); err != nil {
		return err
	}

	// fmt chunk.
	if _, err := w.WriteString("fmt "); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(audioFormat)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(numChannels)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(p.SampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, byteRate); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, blockAlign); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(p.BitsPerSample)); err != nil {
		return err
	}

	// data chunk.
	if _, err := w.WriteString("data"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return err
	}
	if _, err := w.Write(pcm); err != nil {
		return err
	}
	return w.Flush()
}
