package server

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

var discardLogger = &logrus.Logger{
	Out:       ioutil.Discard,
	Level:     logrus.PanicLevel,
	Formatter: &logrus.TextFormatter{},
}
