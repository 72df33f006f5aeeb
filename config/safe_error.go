package config

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func (c *Config) SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if c.IsRelease() {
		return fallback
	}
	return err.Error()
}
