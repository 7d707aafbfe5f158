package main

import "github.com/soumia987/massagerie-app/internal/server"

func main() {
	server.NewServer().Run()
}
