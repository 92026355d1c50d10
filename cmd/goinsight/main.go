package main

import "github.com/dbsmedya/goinsight/cmd/goinsight/cmd"

func main() {
	cmd.Execute()
}
