package logging

import "go.uber.org/zap"

// New は環境に応じたzapロガーを作る。prodはJSON、それ以外は開発向け。
func New(goEnv string) (*zap.Logger, error) {
	if goEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
