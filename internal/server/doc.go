package server

// Package server exposes the HTTP surface: the video-info and download
// endpoints, the health check, CORS and request logging middleware, and static
// serving of the browser UI. Handlers stay thin; orchestration lives in the
// extract and stream packages.
