// Command dev runs the API on 127.0.0.1:5000 with local logging.
package main

import "github.com/adanyl0v/go-task-tracker/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.ApplyDevelopmentOverrides()
	app.MustInitApplicationLogger()

	app.MustOpenStorage()
	defer app.CloseStorage()
	app.MustSeedTasks()

	app.MustListenAndServeHTTP()
}
