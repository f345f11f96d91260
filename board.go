// Board representation
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

package jeux

import "strings"

// Board is a 3x3 grid of marks.  Cells are numbered 1 to 9 in
// row-major order, so cell n lives at index n-1.
type Board [9]Role

// lines enumerates the index triples that decide a game: three rows,
// three columns and the two diagonals.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Get returns the mark at cell n (1 to 9).
func (b *Board) Get(n int) Role {
	return b[n-1]
}

// Put places a mark at cell n (1 to 9), unless the cell is occupied.
func (b *Board) Put(n int, r Role) bool {
	if b[n-1] != NoRole {
		return false
	}
	b[n-1] = r
	return true
}

// Winner scans all eight lines and returns the role holding a
// complete one, or NoRole if no line is complete.
func (b *Board) Winner() Role {
	for _, l := range lines {
		if r := b[l[0]]; r != NoRole && r == b[l[1]] && r == b[l[2]] {
			return r
		}
	}
	return NoRole
}

// Full reports whether every cell is occupied.
func (b *Board) Full() bool {
	for _, r := range b {
		if r == NoRole {
			return false
		}
	}
	return true
}

func (b *Board) cell(i int) byte {
	switch b[i] {
	case RoleX:
		return 'X'
	case RoleO:
		return 'O'
	default:
		return ' '
	}
}

// String renders the board as three mark rows separated by rules.  An
// empty board reads " | | \n-----\n | | \n-----\n | | \n".
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("-----\n")
		}
		i := 3 * row
		sb.WriteByte(b.cell(i))
		sb.WriteByte('|')
		sb.WriteByte(b.cell(i + 1))
		sb.WriteByte('|')
		sb.WriteByte(b.cell(i + 2))
		sb.WriteByte('\n')
	}
	return sb.String()
}
