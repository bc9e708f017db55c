package types_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/anyswap/solana-txcore/types"
	"github.com/anyswap/solana-txcore/types/testkeys"
	"github.com/stretchr/testify/assert"
)

func TestMessageZeroSignersRoundTrip(t *testing.T) {
	msg := &types.Message{
		Header: types.MessageHeader{
			NumRequiredSignatures:       0,
			NumReadonlySignedAccounts:   3,
			NumReadonlyUnsignedAccounts: 2,
		},
		AccountKeys:     testkeys.Keys(5),
		RecentBlockhash: testkeys.Hash(100),
		Instructions: []types.CompiledInstruction{
			{
				ProgramIDIndex: 4,
				Accounts:       []uint8{1, 2, 3},
				Data:           bytes.Repeat([]byte{9}, 5),
			},
		},
	}

	data, err := msg.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0, 3, 2, 5}, data[:4])

	decoded, err := types.MessageFromBytes(data)
	assert.Nil(t, err)
	assert.Equal(t, msg.Header, decoded.Header)
	assert.Equal(t, msg.RecentBlockhash, decoded.RecentBlockhash)
	assert.Equal(t, 1, len(decoded.Instructions))
	assert.Equal(t, msg, decoded)
}

func TestMessageWireLayout(t *testing.T) {
	payer := testkeys.PublicKey(1)
	to := testkeys.PublicKey(2)
	program := testkeys.PublicKey(3)
	ins := types.NewInstruction(program, types.AccountMetaSlice{
		types.NewAccountMeta(payer, true, true),
		types.NewAccountMeta(to, true, false),
	}, []byte{0xaa, 0xbb})

	msg, err := types.CompileMessage([]types.Instruction{ins}, payer, testkeys.Hash(7))
	assert.Nil(t, err)

	var want []byte
	want = append(want, 1, 0, 1, 3)
	want = append(want, payer[:]...)
	want = append(want, to[:]...)
	want = append(want, program[:]...)
	hash := testkeys.Hash(7)
	want = append(want, hash[:]...)
	want = append(want, 1, 2, 2, 0, 1, 2, 0xaa, 0xbb)

	data, err := msg.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, want, data)
}

// orderingInstructions references payer K1, programs K10 and K11, and
// accounts K2..K6 with flags that need merging.
func orderingInstructions() []types.Instruction {
	k := testkeys.PublicKey
	return []types.Instruction{
		types.NewInstruction(k(10), types.AccountMetaSlice{
			types.NewAccountMeta(k(2), true, false),
			types.NewAccountMeta(k(3), false, true),
			types.NewAccountMeta(k(4), false, false),
			types.NewAccountMeta(k(5), true, true),
		}, []byte{1}),
		types.NewInstruction(k(11), types.AccountMetaSlice{
			types.NewAccountMeta(k(4), true, false),
			types.NewAccountMeta(k(1), false, false),
			types.NewAccountMeta(k(6), false, false),
		}, []byte{2, 3}),
	}
}

func TestCompileAccountOrdering(t *testing.T) {
	k := testkeys.PublicKey
	msg, err := types.CompileMessage(orderingInstructions(), k(1), testkeys.Hash(1))
	assert.Nil(t, err)

	assert.Equal(t, types.PublicKeySlice{k(1), k(5), k(3), k(2), k(4), k(6), k(10), k(11)}, msg.AccountKeys)
	assert.Equal(t, types.MessageHeader{
		NumRequiredSignatures:       3,
		NumReadonlySignedAccounts:   1,
		NumReadonlyUnsignedAccounts: 3,
	}, msg.Header)
	assert.Equal(t, types.PublicKeySlice{k(1), k(5), k(3)}, msg.SignerKeys())

	assert.True(t, msg.IsWritable(k(4)), "writable reference must win over readonly")
	assert.True(t, msg.IsWritable(k(1)), "fee payer is always writable")
	assert.True(t, msg.IsSigner(k(1)))
	assert.False(t, msg.IsWritable(k(3)))
	assert.False(t, msg.IsWritable(k(10)))
	assert.False(t, msg.IsSigner(k(2)))

	assert.Equal(t, []uint8{3, 2, 4, 1}, msg.Instructions[0].Accounts)
	assert.Equal(t, uint8(6), msg.Instructions[0].ProgramIDIndex)
	assert.Equal(t, []uint8{4, 0, 5}, msg.Instructions[1].Accounts)
	assert.Equal(t, uint8(7), msg.Instructions[1].ProgramIDIndex)
	assert.Nil(t, msg.Sanitize())
}

func TestCompilePartitionMatchesHeader(t *testing.T) {
	msg, err := types.CompileMessage(orderingInstructions(), testkeys.PublicKey(1), testkeys.Hash(1))
	assert.Nil(t, err)

	metas := msg.AccountMetaList()
	h := msg.Header
	for i, meta := range metas {
		numSigners := int(h.NumRequiredSignatures)
		switch {
		case i < numSigners-int(h.NumReadonlySignedAccounts):
			assert.True(t, meta.IsSigner && meta.IsWritable, "index %d", i)
		case i < numSigners:
			assert.True(t, meta.IsSigner && !meta.IsWritable, "index %d", i)
		case i < len(metas)-int(h.NumReadonlyUnsignedAccounts):
			assert.True(t, !meta.IsSigner && meta.IsWritable, "index %d", i)
		default:
			assert.True(t, !meta.IsSigner && !meta.IsWritable, "index %d", i)
		}
	}
}

func TestCompileFeePayerFirst(t *testing.T) {
	k := testkeys.PublicKey
	// the payer is only referenced as a readonly account of the instruction
	ins := types.NewInstruction(k(9), types.AccountMetaSlice{
		types.NewAccountMeta(k(2), true, true),
		types.NewAccountMeta(k(3), false, false),
	}, nil)

	msg, err := types.CompileMessage([]types.Instruction{ins}, k(3), testkeys.Hash(1))
	assert.Nil(t, err)
	assert.Equal(t, k(3), msg.AccountKeys[0])
	assert.Equal(t, uint8(2), msg.Header.NumRequiredSignatures)
	assert.Equal(t, uint8(0), msg.Header.NumReadonlySignedAccounts)
	assert.True(t, msg.IsWritable(k(3)))

	// the payer need not appear in any instruction
	msg, err = types.CompileMessage([]types.Instruction{ins}, k(4), testkeys.Hash(1))
	assert.Nil(t, err)
	assert.Equal(t, types.PublicKeySlice{k(4), k(2), k(3), k(9)}, msg.AccountKeys)
}

func TestCompileIdempotent(t *testing.T) {
	instructions := orderingInstructions()
	first, err := types.CompileMessage(instructions, testkeys.PublicKey(1), testkeys.Hash(2))
	assert.Nil(t, err)
	second, err := types.CompileMessage(instructions, testkeys.PublicKey(1), testkeys.Hash(2))
	assert.Nil(t, err)

	firstBytes, err := first.MarshalBinary()
	assert.Nil(t, err)
	secondBytes, err := second.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, firstBytes, secondBytes)
	assert.Equal(t, orderingInstructions(), instructions, "compile must not modify its input")
}

func TestCompileTooManyAccounts(t *testing.T) {
	payer := testkeys.PublicKey(1)
	program := testkeys.PublicKey(2)

	accounts := make(types.AccountMetaSlice, 0, 254)
	for i := 0; i < 253; i++ {
		accounts = append(accounts, types.NewAccountMeta(testkeys.PublicKey(uint64(100+i)), false, false))
	}
	ins := types.NewInstruction(program, accounts, nil)
	msg, err := types.CompileMessage([]types.Instruction{ins}, payer, testkeys.Hash(1))
	assert.Nil(t, err)
	assert.Equal(t, types.MaxAccountKeys, len(msg.AccountKeys))

	ins.Accounts = append(accounts, types.NewAccountMeta(testkeys.PublicKey(99), false, false))
	_, err = types.CompileMessage([]types.Instruction{ins}, payer, testkeys.Hash(1))
	assert.True(t, errors.Is(err, types.ErrTooManyAccounts), "err: %v", err)
}

func TestMessageRoundTrip(t *testing.T) {
	msg, err := types.CompileMessage(orderingInstructions(), testkeys.PublicKey(1), testkeys.Hash(3))
	assert.Nil(t, err)
	data, err := msg.MarshalBinary()
	assert.Nil(t, err)

	decoded := new(types.Message)
	assert.Nil(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, msg, decoded)

	again, err := decoded.MarshalBinary()
	assert.Nil(t, err)
	assert.Equal(t, data, again)
}

func TestMessageTruncated(t *testing.T) {
	msg, err := types.CompileMessage(orderingInstructions(), testkeys.PublicKey(1), testkeys.Hash(3))
	assert.Nil(t, err)
	data, err := msg.MarshalBinary()
	assert.Nil(t, err)

	for i := 0; i < len(data); i++ {
		_, err := types.MessageFromBytes(data[:i])
		assert.True(t, errors.Is(err, types.ErrMalformedMessage), "prefix %d: %v", i, err)
	}
}

func TestMessageTrailingBytes(t *testing.T) {
	msg, err := types.CompileMessage(orderingInstructions(), testkeys.PublicKey(1), testkeys.Hash(3))
	assert.Nil(t, err)
	data, err := msg.MarshalBinary()
	assert.Nil(t, err)

	_, err = types.MessageFromBytes(append(data, 0))
	assert.True(t, errors.Is(err, types.ErrMalformedMessage), "err: %v", err)
}

func TestMessageUnmarshalKeepsReceiver(t *testing.T) {
	msg, err := types.CompileMessage(orderingInstructions(), testkeys.PublicKey(1), testkeys.Hash(3))
	assert.Nil(t, err)
	before := *msg

	err = msg.UnmarshalBinary([]byte{1, 0, 0, 0xff})
	assert.NotNil(t, err)
	assert.Equal(t, before, *msg)
}

func TestMessageBadLengthPrefix(t *testing.T) {
	// account count claims more keys than the input holds
	data := []byte{1, 0, 0, 0x80, 0x01}
	_, err := types.MessageFromBytes(data)
	assert.True(t, errors.Is(err, types.ErrMalformedMessage), "err: %v", err)

	// account count varint never terminates
	data = []byte{1, 0, 0, 0x80, 0x80}
	_, err = types.MessageFromBytes(data)
	assert.True(t, errors.Is(err, types.ErrMalformedMessage), "err: %v", err)
}

func TestMessageDecompile(t *testing.T) {
	k := testkeys.PublicKey
	msg, err := types.CompileMessage(orderingInstructions(), k(1), testkeys.Hash(3))
	assert.Nil(t, err)

	instructions, err := msg.Decompile()
	assert.Nil(t, err)
	assert.Equal(t, 2, len(instructions))
	assert.Equal(t, k(10), instructions[0].ProgramID)
	assert.Equal(t, types.AccountMetaSlice{
		types.NewAccountMeta(k(2), true, false),
		types.NewAccountMeta(k(3), false, true),
		types.NewAccountMeta(k(4), true, false),
		types.NewAccountMeta(k(5), true, true),
	}, instructions[0].Accounts)
	assert.Equal(t, []byte{2, 3}, instructions[1].Data)

	msg.Instructions[1].Accounts[0] = 200
	_, err = msg.Decompile()
	assert.True(t, errors.Is(err, types.ErrUnknownAccount), "err: %v", err)
}

func TestMessageSanitize(t *testing.T) {
	k := testkeys.PublicKey
	valid := func() *types.Message {
		msg, err := types.CompileMessage(orderingInstructions(), k(1), testkeys.Hash(3))
		assert.Nil(t, err)
		return msg
	}

	msg := valid()
	msg.Header.NumRequiredSignatures = 0
	assert.NotNil(t, msg.Sanitize())

	msg = valid()
	msg.Header.NumReadonlySignedAccounts = msg.Header.NumRequiredSignatures
	assert.NotNil(t, msg.Sanitize())

	msg = valid()
	msg.AccountKeys[2] = msg.AccountKeys[1]
	err := msg.Sanitize()
	assert.True(t, errors.Is(err, types.ErrMalformedMessage), "err: %v", err)
	assert.Contains(t, err.Error(), "duplicate account key")

	msg = valid()
	msg.Instructions[0].ProgramIDIndex = 0
	assert.NotNil(t, msg.Sanitize())

	msg = valid()
	msg.Instructions[0].Accounts[0] = uint8(len(msg.AccountKeys))
	assert.NotNil(t, msg.Sanitize())
}
