package types

import (
	"fmt"

	"github.com/anyswap/solana-txcore/common/shortvec"
	mapset "github.com/deckarep/golang-set"
)

// MessageHeader describes how the account keys of a message are partitioned.
type MessageHeader struct {
	// The first NumRequiredSignatures account keys must sign the transaction.
	NumRequiredSignatures uint8 `json:"numRequiredSignatures"`

	// The last NumReadonlySignedAccounts of the signer keys are readonly.
	NumReadonlySignedAccounts uint8 `json:"numReadonlySignedAccounts"`

	// The last NumReadonlyUnsignedAccounts of the non-signer keys are readonly.
	NumReadonlyUnsignedAccounts uint8 `json:"numReadonlyUnsignedAccounts"`
}

// Message is the signed part of a transaction.
type Message struct {
	Header MessageHeader `json:"header"`

	// Unique keys ordered as writable signers, readonly signers,
	// writable non-signers, readonly non-signers.
	AccountKeys PublicKeySlice `json:"accountKeys"`

	// A recent ledger hash bounding the lifetime of the transaction.
	RecentBlockhash Hash `json:"recentBlockhash"`

	Instructions []CompiledInstruction `json:"instructions"`
}

func unknownAccountErr(key PublicKey) error {
	return fmt.Errorf("%w: %s", ErrUnknownAccount, key)
}

// CompileMessage orders the accounts of instructions behind feePayer and
// rewrites every instruction as indexes into that account list.
func CompileMessage(instructions []Instruction, feePayer PublicKey, recentBlockhash Hash) (*Message, error) {
	return compileMessage(instructions, feePayer, recentBlockhash, nil)
}

func compileMessage(instructions []Instruction, feePayer PublicKey, recentBlockhash Hash, accountOrder AccountMetaSlice) (*Message, error) {
	metas, header, err := compileAccountMetas(feePayer, accountOrder, instructions)
	if err != nil {
		return nil, err
	}

	index := make(map[PublicKey]uint8, len(metas))
	keys := make(PublicKeySlice, len(metas))
	for i, meta := range metas {
		index[meta.PublicKey] = uint8(i)
		keys[i] = meta.PublicKey
	}

	compiled := make([]CompiledInstruction, len(instructions))
	for i := range instructions {
		compiled[i], err = compileInstruction(&instructions[i], index)
		if err != nil {
			return nil, fmt.Errorf("compile instruction %d: %w", i, err)
		}
	}

	return &Message{
		Header:          header,
		AccountKeys:     keys,
		RecentBlockhash: recentBlockhash,
		Instructions:    compiled,
	}, nil
}

// MarshalBinary encodes the message in its wire layout:
// header, account keys, recent blockhash, instructions.
func (m *Message) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, m.encodedSize())
	buf = append(buf,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)

	buf = shortvec.AppendLength(buf, len(m.AccountKeys))
	for _, key := range m.AccountKeys {
		buf = append(buf, key[:]...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	buf = shortvec.AppendLength(buf, len(m.Instructions))
	for _, ins := range m.Instructions {
		buf = append(buf, ins.ProgramIDIndex)
		buf = shortvec.AppendLength(buf, len(ins.Accounts))
		buf = append(buf, ins.Accounts...)
		buf = shortvec.AppendLength(buf, len(ins.Data))
		buf = append(buf, ins.Data...)
	}
	return buf, nil
}

func (m *Message) encodedSize() int {
	size := 3 + shortvec.EncodedSize(len(m.AccountKeys)) + len(m.AccountKeys)*PublicKeyLength + HashLength
	size += shortvec.EncodedSize(len(m.Instructions))
	for _, ins := range m.Instructions {
		size += 1 + shortvec.EncodedSize(len(ins.Accounts)) + len(ins.Accounts)
		size += shortvec.EncodedSize(len(ins.Data)) + len(ins.Data)
	}
	return size
}

// MessageFromBytes decodes a message that must span all of data.
func MessageFromBytes(data []byte) (*Message, error) {
	m, offset, err := decodeMessage(data, 0)
	if err != nil {
		return nil, err
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedMessage, len(data)-offset)
	}
	return m, nil
}

// UnmarshalBinary decodes data into m. On error m is left unchanged.
func (m *Message) UnmarshalBinary(data []byte) error {
	decoded, err := MessageFromBytes(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

type messageReader struct {
	data   []byte
	offset int
}

func (r *messageReader) readLength(what string) (int, error) {
	length, offset, err := shortvec.DecodeLength(r.data, r.offset)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformedMessage, what, err)
	}
	r.offset = offset
	return length, nil
}

func (r *messageReader) readBytes(n int, what string) ([]byte, error) {
	if n > len(r.data)-r.offset {
		return nil, fmt.Errorf("%w: %s needs %d bytes, %d remaining", ErrMalformedMessage, what, n, len(r.data)-r.offset)
	}
	out := r.data[r.offset : r.offset+n]
	r.offset += n
	return out, nil
}

func (r *messageReader) readByte(what string) (byte, error) {
	b, err := r.readBytes(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// decodeMessage reads one message from data starting at offset and returns
// the offset after it.
func decodeMessage(data []byte, offset int) (*Message, int, error) {
	r := &messageReader{data: data, offset: offset}
	m := new(Message)

	header, err := r.readBytes(3, "header")
	if err != nil {
		return nil, offset, err
	}
	m.Header = MessageHeader{
		NumRequiredSignatures:       header[0],
		NumReadonlySignedAccounts:   header[1],
		NumReadonlyUnsignedAccounts: header[2],
	}

	numKeys, err := r.readLength("account keys count")
	if err != nil {
		return nil, offset, err
	}
	if numKeys > (len(data)-r.offset)/PublicKeyLength {
		return nil, offset, fmt.Errorf("%w: %d account keys exceed remaining %d bytes", ErrMalformedMessage, numKeys, len(data)-r.offset)
	}
	m.AccountKeys = make(PublicKeySlice, numKeys)
	for i := range m.AccountKeys {
		raw, err := r.readBytes(PublicKeyLength, fmt.Sprintf("account key %d", i))
		if err != nil {
			return nil, offset, err
		}
		copy(m.AccountKeys[i][:], raw)
	}

	blockhash, err := r.readBytes(HashLength, "recent blockhash")
	if err != nil {
		return nil, offset, err
	}
	copy(m.RecentBlockhash[:], blockhash)

	numInstructions, err := r.readLength("instructions count")
	if err != nil {
		return nil, offset, err
	}
	// every instruction takes at least three bytes
	if numInstructions > (len(data)-r.offset)/3 {
		return nil, offset, fmt.Errorf("%w: %d instructions exceed remaining %d bytes", ErrMalformedMessage, numInstructions, len(data)-r.offset)
	}
	m.Instructions = make([]CompiledInstruction, numInstructions)
	for i := range m.Instructions {
		ins := &m.Instructions[i]
		if ins.ProgramIDIndex, err = r.readByte(fmt.Sprintf("instruction %d program index", i)); err != nil {
			return nil, offset, err
		}

		numAccounts, err := r.readLength(fmt.Sprintf("instruction %d accounts count", i))
		if err != nil {
			return nil, offset, err
		}
		accounts, err := r.readBytes(numAccounts, fmt.Sprintf("instruction %d accounts", i))
		if err != nil {
			return nil, offset, err
		}
		ins.Accounts = append([]uint8{}, accounts...)

		dataLen, err := r.readLength(fmt.Sprintf("instruction %d data length", i))
		if err != nil {
			return nil, offset, err
		}
		payload, err := r.readBytes(dataLen, fmt.Sprintf("instruction %d data", i))
		if err != nil {
			return nil, offset, err
		}
		ins.Data = append([]byte{}, payload...)
	}
	return m, r.offset, nil
}

// SignerKeys returns the keys whose signatures the message requires.
func (m *Message) SignerKeys() PublicKeySlice {
	n := int(m.Header.NumRequiredSignatures)
	if n > len(m.AccountKeys) {
		n = len(m.AccountKeys)
	}
	return m.AccountKeys[:n]
}

// FeePayer returns the first account key.
func (m *Message) FeePayer() (PublicKey, bool) {
	if len(m.AccountKeys) == 0 {
		return PublicKey{}, false
	}
	return m.AccountKeys[0], true
}

// AccountIndex returns the position of key in the account keys.
func (m *Message) AccountIndex(key PublicKey) (int, bool) {
	idx := m.AccountKeys.IndexOf(key)
	return idx, idx >= 0
}

// Account returns the key at index.
func (m *Message) Account(index int) (PublicKey, error) {
	if index < 0 || index >= len(m.AccountKeys) {
		return PublicKey{}, fmt.Errorf("%w: index %d of %d keys", ErrUnknownAccount, index, len(m.AccountKeys))
	}
	return m.AccountKeys[index], nil
}

// ProgramID resolves the program of a compiled instruction.
func (m *Message) ProgramID(ins *CompiledInstruction) (PublicKey, error) {
	return m.Account(int(ins.ProgramIDIndex))
}

// IsSigner reports whether key is in the signer prefix.
func (m *Message) IsSigner(key PublicKey) bool {
	idx, ok := m.AccountIndex(key)
	return ok && m.isSignerIndex(idx)
}

// IsWritable reports whether key falls in a writable partition.
func (m *Message) IsWritable(key PublicKey) bool {
	idx, ok := m.AccountIndex(key)
	return ok && m.isWritableIndex(idx)
}

func (m *Message) isSignerIndex(idx int) bool {
	return idx < int(m.Header.NumRequiredSignatures)
}

func (m *Message) isWritableIndex(idx int) bool {
	h := m.Header
	numSigners := int(h.NumRequiredSignatures)
	if idx < numSigners {
		return idx < numSigners-int(h.NumReadonlySignedAccounts)
	}
	numWritableUnsigned := len(m.AccountKeys) - numSigners - int(h.NumReadonlyUnsignedAccounts)
	return idx-numSigners < numWritableUnsigned
}

// AccountMetaList returns every account key with the flags implied by its position.
func (m *Message) AccountMetaList() AccountMetaSlice {
	metas := make(AccountMetaSlice, len(m.AccountKeys))
	for i, key := range m.AccountKeys {
		metas[i] = AccountMeta{
			PublicKey:  key,
			IsSigner:   m.isSignerIndex(i),
			IsWritable: m.isWritableIndex(i),
		}
	}
	return metas
}

// Decompile turns the compiled instructions back into instructions that
// reference their accounts by key.
func (m *Message) Decompile() ([]Instruction, error) {
	metas := m.AccountMetaList()
	out := make([]Instruction, len(m.Instructions))
	for i := range m.Instructions {
		ins := &m.Instructions[i]
		programID, err := m.ProgramID(ins)
		if err != nil {
			return nil, fmt.Errorf("instruction %d program: %w", i, err)
		}
		accounts := make(AccountMetaSlice, len(ins.Accounts))
		for j, idx := range ins.Accounts {
			if int(idx) >= len(metas) {
				return nil, fmt.Errorf("instruction %d account %d: %w: index %d of %d keys", i, j, ErrUnknownAccount, idx, len(metas))
			}
			accounts[j] = metas[idx]
		}
		out[i] = Instruction{
			ProgramID: programID,
			Accounts:  accounts,
			Data:      append([]byte{}, ins.Data...),
		}
	}
	return out, nil
}

// Sanitize checks the invariants a compiled message satisfies. Decoding does
// not call it; callers that accept foreign messages should.
func (m *Message) Sanitize() error {
	h := m.Header
	numKeys := len(m.AccountKeys)
	switch {
	case h.NumRequiredSignatures == 0:
		return fmt.Errorf("%w: no fee payer signature required", ErrMalformedMessage)
	case h.NumReadonlySignedAccounts >= h.NumRequiredSignatures:
		return fmt.Errorf("%w: %d readonly signers of %d signers", ErrMalformedMessage, h.NumReadonlySignedAccounts, h.NumRequiredSignatures)
	case int(h.NumRequiredSignatures) > numKeys:
		return fmt.Errorf("%w: %d signers but %d account keys", ErrMalformedMessage, h.NumRequiredSignatures, numKeys)
	case int(h.NumReadonlyUnsignedAccounts) > numKeys-int(h.NumRequiredSignatures):
		return fmt.Errorf("%w: %d readonly non-signers but %d non-signer keys", ErrMalformedMessage, h.NumReadonlyUnsignedAccounts, numKeys-int(h.NumRequiredSignatures))
	case numKeys > MaxAccountKeys:
		return fmt.Errorf("%w: %d accounts", ErrTooManyAccounts, numKeys)
	}

	seen := mapset.NewThreadUnsafeSet()
	for _, key := range m.AccountKeys {
		if !seen.Add(key) {
			return fmt.Errorf("%w: duplicate account key %s", ErrMalformedMessage, key)
		}
	}

	for i, ins := range m.Instructions {
		if ins.ProgramIDIndex == 0 || int(ins.ProgramIDIndex) >= numKeys {
			return fmt.Errorf("%w: instruction %d program index %d", ErrMalformedMessage, i, ins.ProgramIDIndex)
		}
		for _, idx := range ins.Accounts {
			if int(idx) >= numKeys {
				return fmt.Errorf("%w: instruction %d account index %d", ErrMalformedMessage, i, idx)
			}
		}
	}
	return nil
}
