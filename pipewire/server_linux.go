//go:build linux

package pipewire

import (
	"fmt"

	"github.com/jfreymuth/pulse/proto"
)

// ServerRate reads the default sample spec straight from the audio
// server over the native protocol (pipewire-pulse answers it on a
// PipeWire system). This reflects what clients actually negotiate,
// independent of the conf file and graph metadata.
func ServerRate() (int, error) {
	c, conn, err := proto.Connect("")
	if err != nil {
		return 0, fmt.Errorf("connect audio server: %w", err)
	}
	defer conn.Close()

	props := proto.PropList{
		"application.name": proto.PropListString("pwrate"),
	}
	if err := c.Request(&proto.SetClientName{Props: props}, &proto.SetClientNameReply{}); err != nil {
		return 0, fmt.Errorf("set client name: %w", err)
	}

	var info proto.GetServerInfoReply
	if err := c.Request(&proto.GetServerInfo{}, &info); err != nil {
		return 0, fmt.Errorf("server info: %w", err)
	}
	return int(info.DefaultSampleSpec.Rate), nil
}
