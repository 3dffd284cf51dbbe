// SPDX-License-Identifier: ISC
// Copyright (c) 2018-2020 Blocktree Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/blocktree-inc/blocktreed/account"
	"github.com/blocktree-inc/blocktreed/blockdigest"
	"github.com/blocktree-inc/blocktreed/secure"
	"github.com/blocktree-inc/blocktreed/treerecord"
)

// install the trust anchor and root zone into an empty store
func runInstallRoot(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	signer, err := getSigner(c, m)
	if nil != err {
		fail(m, err)
	}

	identity, err := m.config.Identity(c.GlobalString("identity"))
	if nil != err {
		fail(m, err)
	}
	rootAccount, err := account.AccountFromBase58(identity.Account)
	if nil != err {
		fail(m, err)
	}

	zoneAccount := rootAccount
	if "" != c.String("zone-key") {
		zoneAccount, err = account.AccountFromBase58(c.String("zone-key"))
		if nil != err {
			fail(m, err)
		}
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	root, rootZone, err := st.InstallRoot(secure.InstallRootArguments{
		RootKeys:     foreverKeys(rootAccount),
		RootZoneKeys: foreverKeys(zoneAccount),
		Options: treerecord.OptionList{
			{Key: "name", Value: c.String("zone-name")},
		},
		Signer: signer,
	})
	if nil != err {
		fail(m, err)
	}

	printJson(m, "installed", struct {
		Root     blockdigest.Digest `json:"root"`
		RootZone blockdigest.Digest `json:"rootZone"`
	}{
		Root:     root,
		RootZone: rootZone,
	})
	return nil
}

// a permanent write grant for one account
func foreverKeys(acc *account.Account) treerecord.KeySet {
	return treerecord.KeySet{
		treerecord.WriteAction: []treerecord.AuthorizedKey{
			{
				Account:   acc,
				ValidFrom: 0,
				ValidTo:   treerecord.ForeverTimestamp,
			},
		},
	}
}

// the shared create envelope
func runCreate(c *cli.Context, create func(*secure.SecureTree, secure.CreateArguments) (blockdigest.Digest, error)) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	parent, err := firstDigest(c)
	if nil != err {
		fail(m, err)
	}
	signer, err := getSigner(c, m)
	if nil != err {
		fail(m, err)
	}
	keys, err := keySetFromFlags(c, 0)
	if nil != err {
		fail(m, err)
	}

	options := treerecord.OptionList{}
	if "" != c.String("name") {
		options = append(options, treerecord.OptionItem{
			Key:   "name",
			Value: c.String("name"),
		})
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	digest, err := create(st, secure.CreateArguments{
		Block:   parent,
		Signer:  signer,
		Keys:    keys,
		Options: options,
	})
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "%s\n", digest)
	return nil
}

func runCreateZone(c *cli.Context) error {
	return runCreate(c, (*secure.SecureTree).CreateZone)
}

func runCreateIdentity(c *cli.Context) error {
	return runCreate(c, (*secure.SecureTree).CreateIdentity)
}

func runCreateCollection(c *cli.Context) error {
	return runCreate(c, (*secure.SecureTree).CreateCollection)
}

// the shared key mutation envelope
func runKeys(c *cli.Context, mutate func(*secure.SecureTree, secure.SetArguments, treerecord.KeySet) (blockdigest.Digest, error)) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	chain, err := firstDigest(c)
	if nil != err {
		fail(m, err)
	}
	signer, err := getSigner(c, m)
	if nil != err {
		fail(m, err)
	}
	keys, err := keySetFromFlags(c, 0)
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	digest, err := mutate(st, secure.SetArguments{
		Block:  chain,
		Signer: signer,
	}, keys)
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "%s\n", digest)
	return nil
}

func runSetKeys(c *cli.Context) error {
	return runKeys(c, (*secure.SecureTree).SetKeys)
}

func runRevokeKeys(c *cli.Context) error {
	return runKeys(c, (*secure.SecureTree).RevokeKeys)
}

// the shared option mutation envelope
func runOptions(c *cli.Context, mutate func(*secure.SecureTree, secure.SetArguments, treerecord.OptionList) (blockdigest.Digest, error)) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	args := c.Args()
	chain, err := digestArg(args.First())
	if nil != err {
		fail(m, err)
	}
	signer, err := getSigner(c, m)
	if nil != err {
		fail(m, err)
	}
	options, err := optionsFromArgs(args.Tail())
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	digest, err := mutate(st, secure.SetArguments{
		Block:  chain,
		Signer: signer,
	}, options)
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "%s\n", digest)
	return nil
}

func runSetOptions(c *cli.Context) error {
	return runOptions(c, (*secure.SecureTree).SetOptions)
}

func runAddRecord(c *cli.Context) error {
	return runOptions(c, (*secure.SecureTree).AddRecord)
}

// verify a block signature and its authority
func runValidateSignature(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	digest, err := firstDigest(c)
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	err = st.ValidateSignature(digest)
	if nil != err {
		fail(m, err)
	}

	fmt.Fprintf(m.w, "signature valid\n")
	return nil
}

// list the key set blocks authorizing a block
func runSignatureTrace(c *cli.Context) error {
	m, err := getConfig(c)
	if nil != err {
		return err
	}
	digest, err := firstDigest(c)
	if nil != err {
		fail(m, err)
	}

	st, done, err := openLayers(m)
	if nil != err {
		fail(m, err)
	}
	defer done()

	trace, err := st.SignatureTrace(digest)
	if nil != err {
		fail(m, err)
	}

	digests := make([]blockdigest.Digest, 0, len(trace))
	for _, block := range trace {
		digests = append(digests, block.Digest)
	}
	printDigests(m, digests)
	return nil
}
