/*
Package canisterenv resolves Internet Computer canister IDs from local
dfx deployment metadata and synthesizes the environment variables a
frontend build consumes.

It reads the project manifest (dfx.json) and the canister ID registries
(canister_ids.json, .dfx/<network>/canister_ids.json), resolves each
canister's principal for a network, and renders the result as dotenv
lines, shell exports, or JSON. Resolution is best-effort: missing or
malformed metadata files degrade to an empty mapping instead of failing
the build.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/icpkit/canisterenv"
	)

	func main() {
		tool, err := canisterenv.New("./my-dapp")
		if err != nil {
			log.Fatal(err)
		}

		vars, err := tool.Generate(context.Background(), "local")
		if err != nil {
			log.Fatal(err)
		}

		fmt.Print(vars.Dotenv())
	}

The cmd/canisterenv command wraps the same pipeline as a CLI, with a
watch mode that regenerates on metadata changes and a serve mode that
runs a background sync worker behind an HTTP surface.
*/
package canisterenv
