// Command setup_wallet generates a fresh testnet credential pair for the
// token scripts and stores it in .env.local. Existing credentials are kept
// unless --force is passed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/joho/godotenv"
)

const (
	envFilePath    = ".env.local"
	wifEnvKey      = "RUNES_WALLET_WIF"
	addressEnvKey  = "RUNES_WALLET_ADDRESS"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing wallet credentials")
	flag.Parse()

	env, err := godotenv.Read(envFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Failed to read %s: %v\n", envFilePath, err)
			os.Exit(1)
		}
		env = map[string]string{}
	}

	if env[wifEnvKey] != "" && !*force {
		fmt.Println("Wallet already configured in", envFilePath)
		fmt.Println("Address:", env[addressEnvKey])
		fmt.Println("Run with --force to generate a new one.")
		return
	}

	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		fmt.Printf("Failed to generate private key: %v\n", err)
		os.Exit(1)
	}

	params := &chaincfg.TestNet3Params
	wif, err := btcutil.NewWIF(privKey, params, true)
	if err != nil {
		fmt.Printf("Failed to encode WIF: %v\n", err)
		os.Exit(1)
	}

	// Key-path-only taproot address for the wallet
	taprootKey := txscript.ComputeTaprootKeyNoScript(privKey.PubKey())
	address, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(taprootKey), params)
	if err != nil {
		fmt.Printf("Failed to derive taproot address: %v\n", err)
		os.Exit(1)
	}

	env[wifEnvKey] = wif.String()
	env[addressEnvKey] = address.EncodeAddress()

	if err := godotenv.Write(env, envFilePath); err != nil {
		fmt.Printf("Failed to write %s: %v\n", envFilePath, err)
		os.Exit(1)
	}

	fmt.Println("Testnet wallet generated.")
	fmt.Println("Address:", address.EncodeAddress())
	fmt.Println("Credentials saved to", envFilePath)
	fmt.Println("Fund the address with testnet coins before etching the token.")
}
