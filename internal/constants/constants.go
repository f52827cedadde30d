package constants

import "time"

const (
	AppName    = "balance-register"
	WalletFile = "wallet.json"
	EnvPrefix  = "BALANCE_REGISTER"

	FilePerm      = 0o600
	DirectoryPerm = 0o700

	// Registration contracts on Ethereum mainnet.
	LandRegistryAddr   = "0xf87e31492faf9a91b02ee0deaad50d51d56d5d4d"
	EstateRegistryAddr = "0x959e104e1a4db6317fa58f8295f586e1a978c297"

	// MiniMe tokens that track registered balances.
	LandMiniMeTokenAddr   = "0x20dfe381ca71ade2582094cf569a8cb020af5ab1"
	EstateMiniMeTokenAddr = "0x8568f23f343694650370fe5e254b55bfb704a6c7"

	DefaultTitle = "LAND Balance Register"
	VoteURL      = "https://mainnet.aragon.org/#/dcl.eth/0x0741ab50b28ed40ed81acc1867cf4d57004c29b6/"

	DefaultVotingPowerFactor = 100
	DefaultConfirmations     = 1

	ReceiptPollInterval = 2 * time.Second
	ShutdownTimeout     = 5 * time.Second

	// Token metadata is immutable in practice; supply drifts slowly.
	TokenInfoTTL = 10 * time.Minute
)
