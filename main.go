package main

import "venuedesk/cmd"

func main() {
	cmd.Execute()
}
