package relay

import (
	"encoding/json"
	"fmt"
)

// Control messages travel as websocket text frames next to the binary
// data stream. Resize is the only control kind the protocol defines.
const RESIZE_TYPE = 1

type Control struct {
	Type int             `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Resize struct {
	Rows uint16 `json:"rows"`
	Cols uint16 `json:"cols"`
}

func NewResize(rows uint16, cols uint16) (*Control, error) {
	return NewControl(RESIZE_TYPE, Resize{Rows: rows, Cols: cols})
}

func NewControl(t int, v any) (*Control, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Control{
		Type: t,
		Data: data,
	}, nil
}

func (c *Control) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func UnmarshalControl(data []byte) (*Control, error) {
	var c Control
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Control) DecodeResize() (*Resize, error) {
	if c.Type != RESIZE_TYPE {
		return nil, fmt.Errorf("control type %d is not a resize", c.Type)
	}
	var r Resize
	if err := json.Unmarshal(c.Data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
