package shared

import "net"

func GetServerAddr() *net.TCPAddr {
	addr, err := net.ResolveTCPAddr("tcp", "127.0.0.1:7701")
	if err != nil {
		panic(err)
	}
	return addr
}
