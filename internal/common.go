// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal holds build-mode switches shared by the lzw packages.
//
// Debug enables invariant checks that are too costly for normal use.
// It is only set when building the go-fuzz harness with the gofuzz tag.
package internal
