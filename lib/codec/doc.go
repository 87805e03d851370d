// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec encodes the photo API's response bodies.
//
// The photo API speaks JSON by default and CBOR when the client asks
// for format=cbor. Both formats share one set of struct tags: types
// carry `json` tags only, and fxamacker/cbor reads them when no `cbor`
// tag is present. CBOR output uses Core Deterministic Encoding, so the
// same page always produces the same bytes and the same ETag.
//
//	data, err := codec.Encode(codec.FormatCBOR, envelope)
//	err = codec.Decode(codec.FormatCBOR, data, &envelope)
package codec
