package main

import "github.com/killallgit/rewise-api/cmd"

// @title           ReWise API
// @version         1.0.0
// @description     Podcast search proxy and RSS episode fetcher with a short-lived feed cache
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/rewise-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
