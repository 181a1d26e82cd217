// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wvm

import (
	"encoding/hex"
	"strings"
)

// programMarker is the optional prefix of a program text.
const programMarker = "0x"

// DecodeProgram converts a program text into its byte code. The text may be
// prefixed by "0x" (or "0X"); the remainder must consist of an even number of
// hexadecimal digits. An empty text is a valid, empty program.
func DecodeProgram(text string) ([]byte, error) {
	if len(text) >= len(programMarker) && strings.EqualFold(text[:len(programMarker)], programMarker) {
		text = text[len(programMarker):]
	}
	for i := 0; i < len(text); i++ {
		if !isHexDigit(text[i]) {
			return nil, &InvalidEncodingError{
				Offset: i,
				Reason: "not a hexadecimal digit: " + quoteByte(text[i]),
			}
		}
	}
	if len(text)%2 != 0 {
		return nil, &InvalidEncodingError{
			Offset: len(text) - 1,
			Reason: "odd number of hexadecimal digits",
		}
	}
	return hex.DecodeString(text)
}

// EncodeProgram converts byte code into a lower-case program text without the
// 0x marker. It is the inverse of DecodeProgram.
func EncodeProgram(code []byte) string {
	return hex.EncodeToString(code)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func quoteByte(c byte) string {
	if c < 0x20 || c >= 0x7f {
		return "0x" + hex.EncodeToString([]byte{c})
	}
	return "'" + string(rune(c)) + "'"
}
