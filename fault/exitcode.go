// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// process exit codes used by the command-line tools
const (
	ExitSuccess       = 0
	ExitValidation    = 1
	ExitSignature     = 2
	ExitSerialization = 3
	ExitIO            = 4
)

// ExitCode - map an error to its process exit code
func ExitCode(e error) int {
	switch e.(type) {
	case nil:
		return ExitSuccess
	case InvalidBlockError, InvalidRootError, InvalidKeyError:
		return ExitValidation
	case InvalidSignatureError:
		return ExitSignature
	case SerializationError:
		return ExitSerialization
	default:
		return ExitIO
	}
}
