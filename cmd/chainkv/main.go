package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/chainkv/bootstrap"
	"github.com/fulldump/chainkv/configuration"
)

var banner = `
      _           _       _
  ___| |__   __ _(_)_ __ | | ____   __
 / __| '_ \ / _' | | '_ \| |/ /\ \ / /
| (__| | | | (_| | | | | |   <  \ V /
 \___|_| |_|\__,_|_|_| |_|_|\_\  \_/
                          version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(c)
	start()
}
