package main

import (
	"fmt"
	"os"
	"tauwire/client"
	"tauwire/example/shared"

	"github.com/sirupsen/logrus"
)

var log = &logrus.Logger{
	Out:   os.Stderr,
	Level: logrus.DebugLevel,
	Formatter: &logrus.TextFormatter{
		FullTimestamp: true,
	},
}

func main() {
	if err := start(); err != nil {
		log.Fatal(err)
	}
}

func start() error {
	cred, err := shared.LoadCredential(shared.CredentialFilename)
	if err != nil {
		return err
	}

	// Connect to server
	raddr := shared.GetServerAddr()
	cfg := client.DefaultConfig()
	cfg.Logger = log
	c, err := client.Dial("tcp", raddr.String(), cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	log.Infof("Sending CONNECT to %s", raddr)
	status, err := c.Connect(cred)
	if err != nil {
		return err
	}
	if status.OK() {
		fmt.Println("OK")
	} else {
		log.Warnf("Server rejected CONNECT with status 0x%02X", status.Code())
		fmt.Println("ERR")
	}
	return nil
}
