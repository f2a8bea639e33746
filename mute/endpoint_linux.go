//go:build linux

package mute

import (
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

type pulseEndpoint struct {
	client *pulse.Client
	source string
	name   string
}

// Open resolves the default PulseAudio source once. The source is addressed
// by name afterwards so a later change of the server default does not move
// control to another device.
func Open() (Endpoint, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("pushmic"))
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	src, err := c.DefaultSource()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("pulse default source: %w", err)
	}
	return &pulseEndpoint{client: c, source: src.ID(), name: src.Name()}, nil
}

func (p *pulseEndpoint) GetMute() (bool, error) {
	var reply proto.GetSourceInfoReply
	err := p.client.RawRequest(&proto.GetSourceInfo{
		SourceIndex: proto.Undefined,
		SourceName:  p.source,
	}, &reply)
	if err != nil {
		return false, fmt.Errorf("pulse source info: %w", err)
	}
	return reply.Mute, nil
}

func (p *pulseEndpoint) SetMute(muted bool) error {
	err := p.client.RawRequest(&proto.SetSourceMute{
		SourceIndex: proto.Undefined,
		SourceName:  p.source,
		Mute:        muted,
	}, nil)
	if err != nil {
		return fmt.Errorf("pulse set source mute: %w", err)
	}
	return nil
}

func (p *pulseEndpoint) Name() string { return p.name }

func (p *pulseEndpoint) Close() error {
	p.client.Close()
	return nil
}

// Devices lists PulseAudio sources, marking the server default.
func Devices() ([]Device, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("pushmic"))
	if err != nil {
		return nil, fmt.Errorf("pulse: %w", err)
	}
	defer c.Close()

	sources, err := c.ListSources()
	if err != nil {
		return nil, fmt.Errorf("pulse list sources: %w", err)
	}
	def := ""
	if src, err := c.DefaultSource(); err == nil {
		def = src.ID()
	}
	devices := make([]Device, 0, len(sources))
	for _, s := range sources {
		devices = append(devices, Device{Name: s.Name(), Default: s.ID() == def})
	}
	return devices, nil
}
