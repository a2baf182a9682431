// Command boardctl is a terminal client for the taskboard API.
package main

func main() {
	Execute()
}
