// Wire format
//
// Copyright (c) 2026
//
// This file is part of go-jeux.
//
// go-jeux is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-jeux is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-jeux. If not, see
// <http://www.gnu.org/licenses/>

// Package proto implements the jeux wire protocol and the session
// logic behind it.  Every packet is a fixed 13 byte header and an
// optional payload, with multi-byte fields in network byte order:
//
//	offset 0  type      uint8
//	offset 1  id        uint8   invitation slot
//	offset 2  role      uint8   0 none, 1 X, 2 O
//	offset 3  size      uint16  payload length
//	offset 5  sec       uint32  send time, seconds
//	offset 9  nsec      uint32  send time, nanoseconds
package proto

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"go-jeux"
)

// HeaderSize is the wire size of a packet header.
const HeaderSize = 13

// Type identifies the kind of a packet.
type Type uint8

const (
	NONE Type = iota
	LOGIN
	USERS
	INVITE
	REVOKE
	ACCEPT
	DECLINE
	MOVE
	RESIGN
	ACK
	NACK
	INVITED
	REVOKED
	ACCEPTED
	DECLINED
	MOVED
	ENDED
)

var typeNames = [...]string{
	"NONE", "LOGIN", "USERS", "INVITE", "REVOKE", "ACCEPT",
	"DECLINE", "MOVE", "RESIGN", "ACK", "NACK", "INVITED",
	"REVOKED", "ACCEPTED", "DECLINED", "MOVED", "ENDED",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Packet is one protocol message.  Sec and Nsec are stamped by Send
// and carry the sender's clock; receivers treat them as advisory.
type Packet struct {
	Type    Type
	ID      uint8
	Role    jeux.Role
	Sec     uint32
	Nsec    uint32
	Payload []byte
}

// Send stamps the packet with the current time and writes header and
// payload as a single write, so concurrent senders must serialise
// writes to w themselves.
func Send(w io.Writer, p *Packet) error {
	if len(p.Payload) > 0xffff {
		return fmt.Errorf("oversized payload: %d bytes", len(p.Payload))
	}

	now := time.Now()
	p.Sec = uint32(now.Unix())
	p.Nsec = uint32(now.Nanosecond())

	buf := make([]byte, HeaderSize+len(p.Payload))
	buf[0] = uint8(p.Type)
	buf[1] = p.ID
	buf[2] = uint8(p.Role)
	binary.BigEndian.PutUint16(buf[3:], uint16(len(p.Payload)))
	binary.BigEndian.PutUint32(buf[5:], p.Sec)
	binary.BigEndian.PutUint32(buf[9:], p.Nsec)
	copy(buf[HeaderSize:], p.Payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("send %s: %w", p.Type, err)
	}
	return nil
}

// Recv reads one full packet.  An EOF on the first header byte is
// returned as io.EOF; a connection that dies mid-frame produces
// io.ErrUnexpectedEOF.
func Recv(r io.Reader) (*Packet, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("recv header: %w", err)
	}

	p := &Packet{
		Type: Type(hdr[0]),
		ID:   hdr[1],
		Role: jeux.Role(hdr[2]),
		Sec:  binary.BigEndian.Uint32(hdr[5:]),
		Nsec: binary.BigEndian.Uint32(hdr[9:]),
	}

	if size := binary.BigEndian.Uint16(hdr[3:]); size > 0 {
		p.Payload = make([]byte, size)
		if _, err := io.ReadFull(r, p.Payload); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("recv %s payload: %w", p.Type, err)
		}
	}
	return p, nil
}
