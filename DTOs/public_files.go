package dtos

type ListQuery struct {
	Page         int    `query:"page"`
	ItemsPerPage int    `query:"items_per_page"`
	Search       string `query:"search"`
	RequestID    string `query:"-"`
}

type ListItem struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Extension string `json:"extension,omitempty"`
	Icon      string `json:"icon"`
	Size      string `json:"size"`
	SizeBytes *int64 `json:"size_bytes,omitempty"`
	Modified  string `json:"modified"`
	Path      string `json:"path,omitempty"`
	IsImage   *bool  `json:"isImage,omitempty"`
}

type DetailedItem struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	Extension         string `json:"extension,omitempty"`
	Icon              string `json:"icon"`
	Size              string `json:"size"`
	SizeBytes         *int64 `json:"size_bytes,omitempty"`
	Modified          string `json:"modified"`
	ModifiedTimestamp int64  `json:"modified_timestamp"`
	Created           string `json:"created"`
	CreatedTimestamp  int64  `json:"created_timestamp"`
	Path              string `json:"path"`
	IsImage           bool   `json:"isImage"`
	Priority          int    `json:"priority"`
}

type ListResponse struct {
	Success    bool       `json:"success"`
	Items      []ListItem `json:"items"`
	TotalCount int        `json:"totalCount"`
	Path       string     `json:"path"`
}

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	ItemsPerPage int  `json:"items_per_page"`
	TotalItems   int  `json:"total_items"`
	ShowingFrom  int  `json:"showing_from"`
	ShowingTo    int  `json:"showing_to"`
	HasPrevious  bool `json:"has_previous"`
	HasNext      bool `json:"has_next"`
	PreviousPage *int `json:"previous_page"`
	NextPage     *int `json:"next_page"`
}

type Statistics struct {
	TotalItems     int `json:"total_items"`
	TotalFiles     int `json:"total_files"`
	TotalFolders   int `json:"total_folders"`
	TotalImages    int `json:"total_images"`
	DisplayedItems int `json:"displayed_items"`
}

type Filters struct {
	Search       string `json:"search"`
	Page         int    `json:"page"`
	ItemsPerPage int    `json:"items_per_page"`
}

type ServerInfo struct {
	GoVersion       string `json:"go_version"`
	ServerSoftware  string `json:"server_software"`
	OperatingSystem string `json:"operating_system"`
	Architecture    string `json:"architecture"`
	Hostname        string `json:"hostname"`
	ServerTime      string `json:"server_time"`
	Timezone        string `json:"timezone"`
	Uptime          string `json:"uptime"`
}

type MemoryInfo struct {
	MemoryLimit     string `json:"memory_limit"`
	MemoryUsage     string `json:"memory_usage"`
	MemoryPeak      string `json:"memory_peak"`
	MemoryUsageReal string `json:"memory_usage_real"`
	SystemTotal     string `json:"system_total"`
	SystemAvailable string `json:"system_available"`
}

type DiskInfo struct {
	TotalSpace   string  `json:"total_space"`
	FreeSpace    string  `json:"free_space"`
	UsedSpace    string  `json:"used_space"`
	UsagePercent float64 `json:"usage_percent"`
}

type RuntimeConfig struct {
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
	IdleTimeout  string `json:"idle_timeout"`
	BodyLimit    string `json:"body_limit"`
	RateLimit    int    `json:"rate_limit"`
	GoMaxProcs   int    `json:"gomaxprocs"`
	NumGoroutine int    `json:"num_goroutine"`
}

type SystemInfo struct {
	Server ServerInfo `json:"server"`
	Memory MemoryInfo `json:"memory"`
	Disk   DiskInfo   `json:"disk"`
	// php_config is the key existing frontend clients read.
	Runtime RuntimeConfig `json:"php_config"`
}

type PaginatedResponse struct {
	Success    bool           `json:"success"`
	Items      []DetailedItem `json:"items"`
	Pagination Pagination     `json:"pagination"`
	SystemInfo *SystemInfo    `json:"system_info,omitempty"`
	Statistics Statistics     `json:"statistics"`
	Filters    Filters        `json:"filters"`
	Path       string         `json:"path"`
	Timestamp  int64          `json:"timestamp"`
	SortedBy   string         `json:"sorted_by"`
}

type ErrorResponse struct {
	Success   bool    `json:"success"`
	Error     string  `json:"error"`
	Timestamp int64   `json:"timestamp,omitempty"`
	RequestID string  `json:"request_id"`
	Debug     *string `json:"debug,omitempty"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	Database         string `json:"database"`
	WebSocketClients int    `json:"websocket_clients"`
}

type WebSocketMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}
