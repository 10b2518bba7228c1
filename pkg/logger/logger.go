package logger

import "go.uber.org/zap"

// NOOPLogger discards everything; it is the default for tests and for
// servers constructed without an explicit logger.
var NOOPLogger = zap.NewNop().Sugar()

func New(appEnv string) (*zap.SugaredLogger, error) {
	if appEnv == "production" {
		l, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return l.Sugar(), nil
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
