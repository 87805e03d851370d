// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"
	"mime"
)

// Format selects a body encoding. The zero value is FormatJSON.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat maps a format query parameter to a Format. The empty
// string selects JSON.
func ParseFormat(value string) (Format, error) {
	switch value {
	case "", string(FormatJSON):
		return FormatJSON, nil
	case string(FormatCBOR):
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("codec: unknown format %q (want json or cbor)", value)
	}
}

// ContentType is the media type of a body in this format.
func (format Format) ContentType() string {
	if format == FormatCBOR {
		return "application/cbor"
	}
	return "application/json"
}

// FormatForContentType maps a Content-Type header back to a Format.
// Anything other than CBOR is read as JSON.
func FormatForContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "application/cbor" {
		return FormatCBOR
	}
	return FormatJSON
}

// Encode marshals v in format.
func Encode(format Format, v any) ([]byte, error) {
	if format == FormatCBOR {
		return Marshal(v)
	}
	return json.Marshal(v)
}

// Decode unmarshals data in format into v.
func Decode(format Format, data []byte, v any) error {
	if format == FormatCBOR {
		return Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
