package element

import "github.com/pyhub-apps/inkdoc-golang/pkg/serial"

// AudioRef links an element to a position in an audio recording
type AudioRef struct {
	audioFilename string
	timestamp     int64
}

// AudioFilename returns the recording file name, empty when unset
func (a *AudioRef) AudioFilename() string { return a.audioFilename }

func (a *AudioRef) SetAudioFilename(name string) { a.audioFilename = name }

// Timestamp returns the offset into the recording in milliseconds
func (a *AudioRef) Timestamp() int64 { return a.timestamp }

func (a *AudioRef) SetTimestamp(ms int64) { a.timestamp = ms }

func (a *AudioRef) writeAudio(out *serial.ObjectOutputStream) {
	out.WriteObject("Audio")
	out.WriteString(a.audioFilename)
	out.WriteSizeT(uint64(a.timestamp))
	out.EndObject()
}

func readAudio(in *serial.ObjectInputStream) (AudioRef, error) {
	var a AudioRef
	if err := in.ReadObject("Audio"); err != nil {
		return a, err
	}
	name, err := in.ReadString()
	if err != nil {
		return a, err
	}
	ts, err := in.ReadSizeT()
	if err != nil {
		return a, err
	}
	if err := in.EndObject(); err != nil {
		return a, err
	}
	a.audioFilename = name
	a.timestamp = int64(ts)
	return a, nil
}
