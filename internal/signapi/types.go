package signapi

// ServerInfo server info
type ServerInfo struct {
	Identifier       string
	FeePayer         string
	Signers          []string
	MaxRawTxSize     int
	AllowPartialSign bool
	Version          string
}

// PostResult post result
type PostResult string

// SuccessPostResult success post result
var SuccessPostResult PostResult = "Success"

// BuildTxResult build tx result
type BuildTxResult struct {
	Tx      string `json:"tx"`
	MsgHash string `json:"msghash"`
}

// SignTxResult sign tx result
type SignTxResult struct {
	Tx          string `json:"tx"`
	TxHash      string `json:"txhash"`
	FullySigned bool   `json:"fullySigned"`
	SignedSlots []uint `json:"signedSlots"`
}

// AccountInfo account of tx
type AccountInfo struct {
	Address  string `json:"address"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
}

// InstructionInfo instruction of tx
type InstructionInfo struct {
	ProgramID string   `json:"programId"`
	Accounts  []string `json:"accounts"`
	Data      string   `json:"data"`
}

// TxInfo decoded tx
type TxInfo struct {
	TxID            string             `json:"txid"`
	FeePayer        string             `json:"feePayer"`
	RecentBlockhash string             `json:"recentBlockhash"`
	Signatures      []string           `json:"signatures"`
	FullySigned     bool               `json:"fullySigned"`
	Accounts        []*AccountInfo     `json:"accounts"`
	Instructions    []*InstructionInfo `json:"instructions"`
	Size            int                `json:"size"`
}
