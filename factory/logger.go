package factory

import (
	"io"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
)

func BuildLogger(debug bool, w io.Writer) boshlog.Logger {
	if debug {
		return boshlog.NewWriterLogger(boshlog.LevelDebug, w)
	}
	return boshlog.NewWriterLogger(boshlog.LevelInfo, w)
}
