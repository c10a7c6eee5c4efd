// Command etch_token etches the platform's reward token on testnet using the
// wallet created by setup_wallet, and writes the resulting rune id back to
// .env.local for the backend to use.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
)

const (
	envFilePath   = ".env.local"
	wifEnvKey     = "RUNES_WALLET_WIF"
	addressEnvKey = "RUNES_WALLET_ADDRESS"
	coinIDEnvKey  = "RUNES_COIN_ID"

	defaultAPIBase = "https://testnet.runes-api.aibubu.app"

	runeName   = "AIBUBU•LEARNING•POINTS"
	runeSymbol = "A"
	runeAmount = 1000000
)

type etchRequest struct {
	WIF       string `json:"wif"`
	Address   string `json:"address"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Amount    int64  `json:"amount"`
	Divisible int    `json:"divisibility"`
}

type etchResponse struct {
	Height int64  `json:"height"`
	Index  int    `json:"index"`
	TxID   string `json:"txid"`
	Error  string `json:"error"`
}

func main() {
	env, err := godotenv.Read(envFilePath)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", envFilePath, err)
		fmt.Println("Run setup_wallet first.")
		os.Exit(1)
	}

	wif := env[wifEnvKey]
	address := env[addressEnvKey]
	if wif == "" || address == "" {
		fmt.Println("No wallet credentials found in", envFilePath)
		fmt.Println("Run setup_wallet first.")
		os.Exit(1)
	}
	if env[coinIDEnvKey] != "" {
		fmt.Println("Token already etched:", env[coinIDEnvKey])
		return
	}

	apiBase := os.Getenv("RUNES_API_BASE")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	client := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(2 * time.Minute)

	fmt.Println("Etching token", runeName, "from", address, "...")

	var result etchResponse
	resp, err := client.R().
		SetBody(etchRequest{
			WIF:       wif,
			Address:   address,
			Name:      runeName,
			Symbol:    runeSymbol,
			Amount:    runeAmount,
			Divisible: 0,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/etch")
	if err != nil {
		fmt.Printf("Etch request failed: %v\n", err)
		os.Exit(1)
	}
	if resp.IsError() {
		fmt.Printf("Etch request returned status %d: %s\n", resp.StatusCode(), result.Error)
		os.Exit(1)
	}
	if result.Height == 0 {
		fmt.Println("Etch response missing block height; token may not be confirmed yet.")
		os.Exit(1)
	}

	// A rune is identified by the block height and tx index of its etching.
	coinID := fmt.Sprintf("%d:%d", result.Height, result.Index)
	env[coinIDEnvKey] = coinID

	if err := godotenv.Write(env, envFilePath); err != nil {
		fmt.Printf("Failed to write %s: %v\n", envFilePath, err)
		os.Exit(1)
	}

	fmt.Println("Token etched successfully.")
	fmt.Println("Transaction:", result.TxID)
	fmt.Println("Coin id", coinID, "saved to", envFilePath)
}
