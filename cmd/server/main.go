package main

import "salarydash/internal/app/server"

func main() {
	server.Run()
}
