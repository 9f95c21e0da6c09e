/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/video-hunter/cmd"

// @title           Video Hunter API
// @version         1.0.0
// @description     Search a video platform by keyword and download clips capped at 480p
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/video-hunter
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
