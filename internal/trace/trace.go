// Package trace records a game session tick by tick.
//
// A trace is a stream of length-delimited records in protobuf wire format:
// one header record followed by one frame record per tick. Each record is a
// varint byte length followed by the encoded message.
//
//	header: 1 session (string), 2 width, 3 height, 4 players, 5 started (unix nanos)
//	frame:  1 tick, 2 ball x, 3 ball y, 4 ball x vel, 5 ball y vel (fixed32 floats),
//	        6 left paddle y, 7 right paddle y (fixed32 floats), 8 events
package trace

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"pongcart/internal/pong"
)

// ErrCorrupt is returned when a record cannot be decoded.
var ErrCorrupt = errors.New("trace: corrupt record")

// maxRecordSize bounds a single record. Real records are a few dozen bytes.
const maxRecordSize = 1 << 16

type Header struct {
	Session uuid.UUID
	Width   int
	Height  int
	Players int
	Started time.Time
}

type Frame struct {
	Tick    uint64
	Ball    pong.Ball
	PaddleY [2]float32
	Events  pong.Event
}

func FrameOf(s pong.Snapshot) Frame {
	return Frame{
		Tick:    s.Tick,
		Ball:    s.Ball,
		PaddleY: s.PaddleY,
		Events:  s.Events,
	}
}

const (
	headerSession protowire.Number = 1
	headerWidth   protowire.Number = 2
	headerHeight  protowire.Number = 3
	headerPlayers protowire.Number = 4
	headerStarted protowire.Number = 5
)

const (
	frameTick     protowire.Number = 1
	frameBallX    protowire.Number = 2
	frameBallY    protowire.Number = 3
	frameBallXVel protowire.Number = 4
	frameBallYVel protowire.Number = 5
	frameLeftY    protowire.Number = 6
	frameRightY   protowire.Number = 7
	frameEvents   protowire.Number = 8
)

func appendHeader(b []byte, h Header) []byte {
	b = protowire.AppendTag(b, headerSession, protowire.BytesType)
	b = protowire.AppendString(b, h.Session.String())
	b = appendVarint(b, headerWidth, uint64(h.Width))
	b = appendVarint(b, headerHeight, uint64(h.Height))
	b = appendVarint(b, headerPlayers, uint64(h.Players))
	b = appendVarint(b, headerStarted, uint64(h.Started.UnixNano()))
	return b
}

func appendFrame(b []byte, f Frame) []byte {
	b = appendVarint(b, frameTick, f.Tick)
	b = appendFloat(b, frameBallX, f.Ball.X)
	b = appendFloat(b, frameBallY, f.Ball.Y)
	b = appendFloat(b, frameBallXVel, f.Ball.XVel)
	b = appendFloat(b, frameBallYVel, f.Ball.YVel)
	b = appendFloat(b, frameLeftY, f.PaddleY[0])
	b = appendFloat(b, frameRightY, f.PaddleY[1])
	if f.Events != 0 {
		b = appendVarint(b, frameEvents, uint64(f.Events))
	}
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

// fields walks the fields of one record, calling fn for every field it does not skip.
// fn returns the number of bytes it consumed, or a negative protowire error code.
func fields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		b = b[n:]

		n = fn(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func decodeHeader(b []byte) (Header, error) {
	var (
		h       Header
		session string
		started int64
	)
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == headerSession && typ == protowire.BytesType {
			v, n := protowire.ConsumeString(b)
			session = v
			return n
		}
		if typ != protowire.VarintType {
			return 0
		}
		v, n := protowire.ConsumeVarint(b)
		switch num {
		case headerWidth:
			h.Width = int(v)
		case headerHeight:
			h.Height = int(v)
		case headerPlayers:
			h.Players = int(v)
		case headerStarted:
			started = int64(v)
		}
		return n
	})
	if err != nil {
		return Header{}, err
	}

	if session != "" {
		id, err := uuid.Parse(session)
		if err != nil {
			return Header{}, corrupt(fmt.Errorf("session id: %w", err))
		}
		h.Session = id
	}
	h.Started = time.Unix(0, started)
	return h, nil
}

func decodeFrame(b []byte) (Frame, error) {
	var f Frame
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			switch num {
			case frameTick:
				f.Tick = v
			case frameEvents:
				f.Events = pong.Event(v)
			}
			return n
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			x := math.Float32frombits(v)
			switch num {
			case frameBallX:
				f.Ball.X = x
			case frameBallY:
				f.Ball.Y = x
			case frameBallXVel:
				f.Ball.XVel = x
			case frameBallYVel:
				f.Ball.YVel = x
			case frameLeftY:
				f.PaddleY[0] = x
			case frameRightY:
				f.PaddleY[1] = x
			}
			return n
		}
		return 0
	})
	return f, err
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}
