package relay

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestResizeRoundTrip(t *testing.T) {
	control, err := NewResize(40, 120)
	assert.Equal(t, err, nil)

	data, err := control.Marshal()
	assert.Equal(t, err, nil)

	parsed, err := UnmarshalControl(data)
	assert.Equal(t, err, nil)
	assert.Equal(t, parsed.Type, RESIZE_TYPE)

	resize, err := parsed.DecodeResize()
	assert.Equal(t, err, nil)
	assert.Equal(t, resize.Rows, uint16(40))
	assert.Equal(t, resize.Cols, uint16(120))
}

func TestUnmarshalControl(t *testing.T) {
	type Wanted struct {
		err bool
	}

	type Parameters struct {
		data string
	}

	testCases := []struct {
		name       string
		wanted     Wanted
		parameters Parameters
	}{
		{
			"Valid resize",
			Wanted{err: false},
			Parameters{data: `{"type":1,"data":{"rows":24,"cols":80}}`},
		},
		{
			"Not JSON",
			Wanted{err: true},
			Parameters{data: `resize please`},
		},
		{
			"Empty",
			Wanted{err: true},
			Parameters{data: ``},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalControl([]byte(tc.parameters.data))
			assert.Equal(t, err != nil, tc.wanted.err)
		})
	}
}

func TestDecodeResizeWrongType(t *testing.T) {
	control, err := NewControl(99, Resize{Rows: 1, Cols: 1})
	assert.Equal(t, err, nil)

	_, err = control.DecodeResize()
	assert.NotEqual(t, err, nil)
}
