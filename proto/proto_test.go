package proto

import (
	"bytes"
	"io"
	"testing"

	"go-jeux"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRecv(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Send(&buf, &Packet{
		Type:    INVITE,
		ID:      3,
		Role:    jeux.RoleX,
		Payload: []byte("alice"),
	}))
	assert.Equal(t, HeaderSize+5, buf.Len())

	p, err := Recv(&buf)
	require.NoError(t, err)
	assert.Equal(t, INVITE, p.Type)
	assert.Equal(t, uint8(3), p.ID)
	assert.Equal(t, jeux.RoleX, p.Role)
	assert.Equal(t, []byte("alice"), p.Payload)
	assert.NotZero(t, p.Sec, "packets are stamped on send")
}

func TestSendRecvEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Send(&buf, &Packet{Type: ACK}))
	assert.Equal(t, HeaderSize, buf.Len())

	p, err := Recv(&buf)
	require.NoError(t, err)
	assert.Equal(t, ACK, p.Type)
	assert.Empty(t, p.Payload)
}

func TestRecvEOF(t *testing.T) {
	// A connection closed between packets is a clean EOF.
	_, err := Recv(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)
}

func TestRecvShortHeader(t *testing.T) {
	_, err := Recv(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestRecvShortPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Send(&buf, &Packet{Type: LOGIN, Payload: []byte("alice")}))

	// Truncate the frame inside the payload.
	trunc := buf.Bytes()[:buf.Len()-2]
	_, err := Recv(bytes.NewReader(trunc))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "LOGIN", LOGIN.String())
	assert.Equal(t, "ENDED", ENDED.String())
	assert.Equal(t, "Type(99)", Type(99).String())
}
