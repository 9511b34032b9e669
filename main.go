package main

import "github.com/ryancicak/trino-databricks-authentication/cmd"

func main() {
	cmd.Execute()
}
