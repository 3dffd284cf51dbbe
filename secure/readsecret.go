// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/broker"
	"github.com/blocktree-inc/blocktreed/fault"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// ReadSecret - obtain a block's authorized read key material
// re-encrypted under a trusted key
//
// the encrypted read key material is collected from the key sets on
// the block's own chain (keys records newest first, then the chain
// root's embedded set), a signed request token is
// obtained from the broker and the secrets are submitted for
// re-encryption; the caller alone can open the results
func (st *SecureTree) ReadSecret(digest blockdigest.Digest, trustedKey *[32]byte, secretsBroker broker.Broker) ([][]byte, error) {
	block, err := st.ReadSecureBlock(digest)
	if nil != err {
		return nil, err
	}
	if nil == block {
		return nil, fault.ErrBlockIsNull
	}

	chainRoot, err := st.chainRootOf(digest)
	if nil != err {
		return nil, err
	}

	keyBlocks, err := st.keySetBlocks(chainRoot)
	if nil != err {
		return nil, err
	}

	secrets := make([][]byte, 0, 2)
	for _, keyBlock := range keyBlocks {
		keySet := keyBlock.Record.EmbeddedKeys()
		if nil == keySet {
			continue
		}
		secrets = append(secrets, keySet.Secrets(treerecord.ReadAction)...)
	}
	if 0 == len(secrets) {
		return nil, fault.ErrKeyNotFound
	}

	token, err := secretsBroker.RequestToken(trustedKey)
	if nil != err {
		return nil, err
	}

	return secretsBroker.Reencrypt(token, secrets)
}
