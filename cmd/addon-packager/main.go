package main

import "github.com/fieldreporter/addon-packager/cmd/addon-packager/cmd"

func main() {
	cmd.Execute()
}
