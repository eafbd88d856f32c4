package analytics

// UniqueCount 按 IP 统计独立访客数
// IP 原样比较，不做归一化（IPv4 映射的 IPv6 地址与 IPv4 视为不同访客）。
func UniqueCount(clicks []ClickEvent) int {
	if len(clicks) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(clicks))
	for _, click := range clicks {
		seen[click.IPAddress] = struct{}{}
	}
	return len(seen)
}
