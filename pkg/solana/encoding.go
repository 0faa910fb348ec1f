package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/favorites-action/pkg/solana/shortvec"
)

// Marshal returns the wire format of the transaction: a shortvec of
// signatures followed by the message. Transactions larger than
// MaxTransactionSize are rejected.
func (t Transaction) Marshal() ([]byte, error) {
	b := bytes.NewBuffer(nil)

	if _, err := shortvec.EncodeLen(b, len(t.Signatures)); err != nil {
		return nil, errors.Wrap(err, "failed to write signature length")
	}
	for _, s := range t.Signatures {
		_, _ = b.Write(s[:])
	}

	message, err := t.Message.Marshal()
	if err != nil {
		return nil, err
	}
	_, _ = b.Write(message)

	if b.Len() > MaxTransactionSize {
		return nil, errors.Wrapf(ErrTransactionTooLarge, "transaction is %d bytes", b.Len())
	}
	return b.Bytes(), nil
}

// Marshal returns the bytes that are signed by each required signer.
func (m Message) Marshal() ([]byte, error) {
	b := bytes.NewBuffer(nil)

	if m.Version != MessageVersion0 {
		return nil, errors.Errorf("unsupported message version: %d", m.Version)
	}
	_ = b.WriteByte(versionPrefix | byte(m.Version))

	_ = b.WriteByte(m.Header.NumSignatures)
	_ = b.WriteByte(m.Header.NumReadonlySigned)
	_ = b.WriteByte(m.Header.NumReadOnly)

	if _, err := shortvec.EncodeLen(b, len(m.Accounts)); err != nil {
		return nil, errors.Wrap(err, "failed to write account length")
	}
	for _, a := range m.Accounts {
		_, _ = b.Write(a)
	}

	_, _ = b.Write(m.RecentBlockhash[:])

	if _, err := shortvec.EncodeLen(b, len(m.Instructions)); err != nil {
		return nil, errors.Wrap(err, "failed to write instruction length")
	}
	for i, ixn := range m.Instructions {
		_ = b.WriteByte(ixn.ProgramIndex)

		if err := writeShortVecBytes(b, ixn.Accounts); err != nil {
			return nil, errors.Wrapf(err, "failed to write accounts of instruction[%d]", i)
		}
		if err := writeShortVecBytes(b, ixn.Data); err != nil {
			return nil, errors.Wrapf(err, "failed to write data of instruction[%d]", i)
		}
	}

	if _, err := shortvec.EncodeLen(b, len(m.AddressTableLookups)); err != nil {
		return nil, errors.Wrap(err, "failed to write address table lookup length")
	}
	for i, lookup := range m.AddressTableLookups {
		_, _ = b.Write(lookup.PublicKey)

		if err := writeShortVecBytes(b, lookup.WritableIndexes); err != nil {
			return nil, errors.Wrapf(err, "failed to write writable indexes of lookup[%d]", i)
		}
		if err := writeShortVecBytes(b, lookup.ReadonlyIndexes); err != nil {
			return nil, errors.Wrapf(err, "failed to write readonly indexes of lookup[%d]", i)
		}
	}

	return b.Bytes(), nil
}

func (m *Message) Unmarshal(b []byte) (err error) {
	if len(b) == 0 {
		return errors.New("message is empty")
	}

	buf := bytes.NewBuffer(b)

	prefix, _ := buf.ReadByte()
	if prefix&versionPrefix == 0 {
		return errors.New("legacy messages are not supported")
	}
	if version := MessageVersion(prefix &^ versionPrefix); version != MessageVersion0 {
		return errors.Errorf("unsupported message version: %d", version)
	}
	m.Version = MessageVersion0

	if m.Header.NumSignatures, err = buf.ReadByte(); err != nil {
		return errors.Wrap(err, "failed to read num signatures")
	}
	if m.Header.NumReadonlySigned, err = buf.ReadByte(); err != nil {
		return errors.Wrap(err, "failed to read num readonly signatures")
	}
	if m.Header.NumReadOnly, err = buf.ReadByte(); err != nil {
		return errors.Wrap(err, "failed to read num readonly")
	}

	accountLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read account len")
	}
	m.Accounts = make([]ed25519.PublicKey, accountLen)
	for i := 0; i < accountLen; i++ {
		m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		if _, err = io.ReadFull(buf, m.Accounts[i]); err != nil {
			return errors.Wrapf(err, "failed to read account at index %d", i)
		}
	}

	if _, err = io.ReadFull(buf, m.RecentBlockhash[:]); err != nil {
		return errors.Wrap(err, "failed to read recent block hash")
	}

	instructionLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read instruction len")
	}
	m.Instructions = make([]CompiledInstruction, instructionLen)
	for i := 0; i < instructionLen; i++ {
		if m.Instructions[i], err = readCompiledInstruction(buf); err != nil {
			return errors.Wrapf(err, "failed to read instruction[%d]", i)
		}
	}

	m.AddressTableLookups = nil
	lookupLen, err := shortvec.DecodeLen(buf)
	if err != nil {
		return errors.Wrap(err, "failed to read address table lookup len")
	}
	for i := 0; i < lookupLen; i++ {
		lookup, err := readAddressTableLookup(buf)
		if err != nil {
			return errors.Wrapf(err, "failed to read address table lookup[%d]", i)
		}
		m.AddressTableLookups = append(m.AddressTableLookups, lookup)
	}

	// Dynamically loaded accounts extend the index space past the static list.
	addressable := len(m.Accounts)
	for _, lookup := range m.AddressTableLookups {
		addressable += len(lookup.WritableIndexes) + len(lookup.ReadonlyIndexes)
	}
	for i, ixn := range m.Instructions {
		if int(ixn.ProgramIndex) >= len(m.Accounts) {
			return errors.Errorf("program index out of range: %d:%d", i, ixn.ProgramIndex)
		}
		for _, index := range ixn.Accounts {
			if int(index) >= addressable {
				return errors.Errorf("account index out of range: %d:%d", i, index)
			}
		}
	}

	return nil
}

func readCompiledInstruction(buf *bytes.Buffer) (c CompiledInstruction, err error) {
	if c.ProgramIndex, err = buf.ReadByte(); err != nil {
		return c, errors.Wrap(err, "failed to read program index")
	}

	if c.Accounts, err = readShortVecBytes(buf); err != nil {
		return c, errors.Wrap(err, "failed to read accounts")
	}

	if c.Data, err = readShortVecBytes(buf); err != nil {
		return c, errors.Wrap(err, "failed to read data")
	}

	return c, nil
}

func readAddressTableLookup(buf *bytes.Buffer) (l MessageAddressTableLookup, err error) {
	l.PublicKey = make([]byte, ed25519.PublicKeySize)
	if _, err = io.ReadFull(buf, l.PublicKey); err != nil {
		return l, errors.Wrap(err, "failed to read table address")
	}

	if l.WritableIndexes, err = readShortVecBytes(buf); err != nil {
		return l, errors.Wrap(err, "failed to read writable indexes")
	}

	if l.ReadonlyIndexes, err = readShortVecBytes(buf); err != nil {
		return l, errors.Wrap(err, "failed to read readonly indexes")
	}

	return l, nil
}

func readShortVecBytes(buf *bytes.Buffer) ([]byte, error) {
	length, err := shortvec.DecodeLen(buf)
	if err != nil {
		return nil, err
	}

	value := make([]byte, length)
	if _, err := io.ReadFull(buf, value); err != nil {
		return nil, err
	}
	return value, nil
}

func writeShortVecBytes(buf *bytes.Buffer, value []byte) error {
	if _, err := shortvec.EncodeLen(buf, len(value)); err != nil {
		return err
	}
	_, _ = buf.Write(value)
	return nil
}
