package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"sort"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

var ErrTransactionTooLarge = errors.Errorf("transaction exceeds %d bytes", MaxTransactionSize)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

func (b Blockhash) ToBase58() string {
	return base58.Encode(b[:])
}

// BlockhashFromString decodes a base58 encoded blockhash.
func BlockhashFromString(value string) (Blockhash, error) {
	var bh Blockhash

	decoded, err := base58.Decode(value)
	if err != nil {
		return bh, errors.Wrap(err, "invalid base58 encoded blockhash")
	}
	if len(decoded) != len(bh) {
		return bh, errors.Errorf("blockhash is %d bytes, expected %d", len(decoded), len(bh))
	}

	copy(bh[:], decoded)
	return bh, nil
}

type MessageVersion uint8

// Only version 0 messages are compiled and decoded.
const (
	MessageVersion0 MessageVersion = 0
)

// versionPrefix is the high bit set on the first message byte of a versioned
// message. Legacy messages start with NumSignatures, which is always < 128.
const versionPrefix = 0x80

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

type MessageAddressTableLookup struct {
	PublicKey       ed25519.PublicKey
	WritableIndexes []byte
	ReadonlyIndexes []byte
}

type Message struct {
	Version             MessageVersion
	Header              Header
	Accounts            []ed25519.PublicKey
	RecentBlockhash     Blockhash
	Instructions        []CompiledInstruction
	AddressTableLookups []MessageAddressTableLookup
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewV0Transaction compiles a version 0 message paid for by payer. All accounts
// are loaded statically, so the address table lookup list is always empty.
func NewV0Transaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}

	for _, ixn := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: ixn.Program,
			isProgram: true,
		})
		accounts = append(accounts, ixn.Accounts...)
	}

	accounts = filterUnique(accounts)
	sort.Sort(SortableAccountMeta(accounts))

	m := Message{
		Version: MessageVersion0,
	}
	for _, account := range accounts {
		pub := account.PublicKey
		if len(pub) == 0 {
			pub = make([]byte, ed25519.PublicKeySize)
		}
		m.Accounts = append(m.Accounts, pub)

		switch {
		case account.IsSigner && !account.IsWritable:
			m.Header.NumSignatures++
			m.Header.NumReadonlySigned++
		case account.IsSigner:
			m.Header.NumSignatures++
		case !account.IsWritable:
			m.Header.NumReadOnly++
		}
	}

	for _, ixn := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: byte(indexOf(accounts, ixn.Program)),
			Data:         ixn.Data,
		}
		for _, account := range ixn.Accounts {
			compiled.Accounts = append(compiled.Accounts, byte(indexOf(accounts, account.PublicKey)))
		}

		m.Instructions = append(m.Instructions, compiled)
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// IsSigned reports whether every required signature slot is populated.
func (t *Transaction) IsSigned() bool {
	for _, sig := range t.Signatures {
		if sig == (Signature{}) {
			return false
		}
	}
	return len(t.Signatures) > 0
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes, err := t.Message.Marshal()
	if err != nil {
		return errors.Wrap(err, "failed to marshal message")
	}

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)

		index := -1
		for i, account := range t.Message.Accounts {
			if bytes.Equal(account, pub) {
				index = i
				break
			}
		}
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

// filterUnique collapses duplicate accounts, promoting each survivor to the
// union of the permissions it was referenced with.
func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))

	for _, account := range accounts {
		existing := -1
		for i := range filtered {
			if bytes.Equal(account.PublicKey, filtered[i].PublicKey) {
				existing = i
				break
			}
		}

		if existing < 0 {
			filtered = append(filtered, account)
			continue
		}

		filtered[existing].IsSigner = filtered[existing].IsSigner || account.IsSigner
		filtered[existing].IsWritable = filtered[existing].IsWritable || account.IsWritable
		filtered[existing].isPayer = filtered[existing].isPayer || account.isPayer
	}

	return filtered
}

func indexOf(accounts []AccountMeta, pub ed25519.PublicKey) int {
	for i, account := range accounts {
		if bytes.Equal(account.PublicKey, pub) {
			return i
		}
	}
	return -1
}
