package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/anyswap/solana-txcore/programs/system"
	"github.com/anyswap/solana-txcore/programs/token"
	"github.com/anyswap/solana-txcore/types"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	decodeCommand = &cli.Command{
		Action:    decode,
		Name:      "decode",
		Usage:     "decode base64 tx",
		ArgsUsage: "<base64 tx>",
		Description: `
decode and print a base64 wire tx, with its accounts, instructions and
signature status.

Example:

./solanaTools decode --file ./transfer.signed
`,
		Flags: []cli.Flag{
			inputFileFlag,
		},
	}

	titleStyle    = color.New(color.FgRed, color.Underline)
	signerStyle   = color.New(color.FgGreen)
	writableStyle = color.New(color.FgYellow)
	readonlyStyle = color.New(color.FgWhite)
	programStyle  = color.New(color.FgBlue, color.Bold)
	errorStyle    = color.New(color.FgRed)

	dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
)

func decode(ctx *cli.Context) error {
	input := ctx.Args().First()
	if fileName := ctx.String(inputFileFlag.Name); fileName != "" {
		content, err := ioutil.ReadFile(fileName)
		if err != nil {
			return err
		}
		input = string(content)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("no transaction specified")
	}
	tx, err := types.TransactionFromBase64(input)
	if err != nil {
		return err
	}
	message, err := tx.CompileMessage()
	if err != nil {
		return err
	}
	printTransaction(tx, message)
	return nil
}

func printTransaction(tx *types.Transaction, message *types.Message) {
	if txid, err := tx.ID(); err == nil {
		_, _ = titleStyle.Printf("Transaction %v\n", txid)
	} else {
		_, _ = titleStyle.Println("Transaction <unsigned>")
	}
	fmt.Printf("Header: signatures=%v readonlySigned=%v readonlyUnsigned=%v\n",
		message.Header.NumRequiredSignatures,
		message.Header.NumReadonlySignedAccounts,
		message.Header.NumReadonlyUnsignedAccounts)
	fmt.Println("RecentBlockhash:", message.RecentBlockhash)

	slots := tx.SignedSlots()
	fmt.Printf("Signatures (%v of %v):\n", slots.Count(), message.Header.NumRequiredSignatures)
	for i, sig := range tx.Signatures {
		if sig.IsZero() {
			_, _ = errorStyle.Printf("  [%v] <missing>\n", i)
			continue
		}
		fmt.Printf("  [%v] %v\n", i, sig)
	}
	if tx.IsFullySigned() {
		if err := tx.VerifySignatures(); err != nil {
			_, _ = errorStyle.Printf("  verify signatures failed: %v\n", err)
		} else {
			_, _ = signerStyle.Println("  verify signatures success")
		}
	}

	fmt.Println("Accounts:")
	for i, key := range message.AccountKeys {
		style := readonlyStyle
		flags := "readonly"
		switch {
		case message.IsSigner(key) && message.IsWritable(key):
			style, flags = signerStyle, "signer,writable"
		case message.IsSigner(key):
			style, flags = signerStyle, "signer"
		case message.IsWritable(key):
			style, flags = writableStyle, "writable"
		}
		_, _ = style.Printf("  [%v] %v (%v)\n", i, key, flags)
	}

	fmt.Println("Instructions:")
	for i, ins := range tx.Instructions() {
		ins := ins
		_, _ = programStyle.Printf("  [%v] program %v\n", i, ins.ProgramID)
		decoded, err := decodeInstruction(&ins)
		if err != nil {
			_, _ = errorStyle.Printf("  cannot decode instruction: %v\n", err)
			fmt.Printf("  data: %v\n", hex.EncodeToString(ins.Data))
			for j, meta := range ins.Accounts {
				fmt.Printf("  accounts[%v]: %v signer=%v writable=%v\n", j, meta.PublicKey, meta.IsSigner, meta.IsWritable)
			}
			continue
		}
		fmt.Print(dumper.Sdump(decoded))
	}
}

func decodeInstruction(ins *types.Instruction) (interface{}, error) {
	switch ins.ProgramID {
	case system.ProgramID:
		instructionType, err := system.DecodeInstructionType(ins.Data)
		if err != nil {
			return nil, err
		}
		switch instructionType {
		case system.InstructionTransfer:
			return system.DecodeTransfer(ins)
		case system.InstructionCreateAccount:
			return system.DecodeCreateAccount(ins)
		}
		return nil, fmt.Errorf("system instruction %v is not supported", instructionType)
	case token.ProgramID:
		instructionType, err := token.DecodeInstructionType(ins.Data)
		if err != nil {
			return nil, err
		}
		switch instructionType {
		case token.InitializeMint:
			return token.DecodeInitializeMint(ins)
		case token.InitializeAccount:
			return token.DecodeInitializeAccount(ins)
		case token.InitializeMultisig:
			return token.DecodeInitializeMultisig(ins)
		case token.Transfer:
			return token.DecodeTransfer(ins)
		case token.TransferChecked:
			return token.DecodeTransferChecked(ins)
		case token.CloseAccount:
			return token.DecodeCloseAccount(ins)
		}
		return nil, fmt.Errorf("token instruction %v is not supported", instructionType)
	}
	return nil, fmt.Errorf("unknown program %v", ins.ProgramID)
}
